package serialization

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case int32:
		return putUint32(w, uint32(e))

	case uint32:
		return putUint32(w, e)

	case int64:
		return putUint64(w, uint64(e))

	case uint64:
		return putUint64(w, e)

	case uint8:
		_, err := w.Write([]byte{e})
		return errors.WithStack(err)

	case chainhash.Hash:
		_, err := w.Write(e[:])
		return errors.WithStack(err)

	case []byte:
		err := putUint64(w, uint64(len(e)))
		if err != nil {
			return err
		}
		_, err = w.Write(e)
		return errors.WithStack(err)
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't serialize type %T", element)
}

// WriteElements writes multiple element parameters to w using WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the little endian representation of element from r.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *int32:
		v, err := getUint32(r)
		if err != nil {
			return err
		}
		*e = int32(v)
		return nil

	case *uint32:
		v, err := getUint32(r)
		if err != nil {
			return err
		}
		*e = v
		return nil

	case *int64:
		v, err := getUint64(r)
		if err != nil {
			return err
		}
		*e = int64(v)
		return nil

	case *uint64:
		v, err := getUint64(r)
		if err != nil {
			return err
		}
		*e = v
		return nil

	case *chainhash.Hash:
		_, err := io.ReadFull(r, e[:])
		return errors.WithStack(err)

	case *[]byte:
		length, err := getUint64(r)
		if err != nil {
			return err
		}
		if length > maxSerializedByteSliceLength {
			return errors.Errorf("byte slice length %d is larger than the maximum of %d",
				length, maxSerializedByteSliceLength)
		}
		buf := make([]byte, length)
		_, err = io.ReadFull(r, buf)
		if err != nil {
			return errors.WithStack(err)
		}
		*e = buf
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't deserialize type %T", element)
}

// maxSerializedByteSliceLength bounds length prefixes read from
// untrusted bytes so a corrupt record cannot trigger a huge allocation.
const maxSerializedByteSliceLength = 1 << 26

func putUint32(w io.Writer, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

func putUint64(w io.Writer, value uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

func getUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func getUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
