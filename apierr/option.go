package apierr

// Option is an Error option function
type Option func(*Error)

func WithOp(op string) Option       { return func(e *Error) { e.Op = op } }
func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithErr(err error) Option      { return func(e *Error) { e.Err = err } }
