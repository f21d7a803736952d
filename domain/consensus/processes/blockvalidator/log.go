package blockvalidator

import (
	"github.com/emberchain/emberd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BLKV")
