package chainstore

import (
	"github.com/emberchain/emberd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CHST")
