/*
Package errors implements the error kinds shared by custody extensions.

Reuse the root errors declared in this package whenever possible and only
register a new one in an extension when nothing here describes the failure.
x/escrow is a good package to look at for extension defined errors.

If you want to register a custom error - use Register(code, description).
For reusing errors - use ErrXyz.New, ErrXyz.Newf or Wrap.
The code allows clients to distinguish types of errors and act accordingly.

A stack trace is recorded at the innermost wrap. Do not declare wrapped errors
as globals (`var ErrFoo = errors.ErrInvalidInput.New("foo")`), the recorded
stack would be useless.

Once you have an error, use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
