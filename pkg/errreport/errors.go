package errreport

import "errors"

var (
	ErrSinkAppend = errors.New("errreport: failed to append record")
	ErrSinkRead   = errors.New("errreport: failed to read records")
)
