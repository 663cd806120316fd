package emfield

import "fmt"

// InvalidRequestError reports a structural or semantic violation of
// the request contract (§7). Field names the offending field path.
type InvalidRequestError struct {
	Field string
	Msg   string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("emfield: invalid request: %s: %s", e.Field, e.Msg)
}

// UnsupportedOptionError reports that a policy-locked option (§3, §7)
// was asked to take a value other than its fixed one.
type UnsupportedOptionError struct {
	Field string
	Got   string
}

func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("emfield: unsupported option: %s=%q is policy-locked", e.Field, e.Got)
}

// QueryMismatchError reports a point query whose altitude does not
// match the grid's altitude slice (§6).
type QueryMismatchError struct {
	RequestedAltM float64
	GridAltM      float64
}

func (e *QueryMismatchError) Error() string {
	return fmt.Sprintf("emfield: query altitude %.3fm does not match grid altitude %.3fm", e.RequestedAltM, e.GridAltM)
}

// NotFoundError reports that a point query resolved to a cell with no
// above-threshold field value, or fell outside the grid entirely.
type NotFoundError struct {
	Lat, Lon float64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("emfield: no data at (%.6f, %.6f)", e.Lat, e.Lon)
}
