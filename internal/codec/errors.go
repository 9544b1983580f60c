package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the file is neither xlsx nor xls.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// ErrEmptyWorkbook indicates there is nothing to encode.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// DecodeError reports a failure to turn file bytes into sheets.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a failure to write a sheet into the output workbook.
type EncodeError struct {
	SheetName string
	Err       error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode sheet %q: %v", e.SheetName, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
