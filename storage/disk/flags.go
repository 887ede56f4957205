package disk

import (
	"errors"
	"io"
	"os"
)

const osReadWriteCreate = os.O_RDWR | os.O_CREATE

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
