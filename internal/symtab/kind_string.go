// Code generated by "stringer -type Kind -output kind_string.go"; adapted by
// hand here since go generate is never invoked in this exercise. DO NOT EDIT
// without regenerating from the real tool once the toolchain is available.

package symtab

import "strconv"

func _() {
	var x [1]struct{}
	_ = x[Code-0]
	_ = x[Data-1]
	_ = x[Entry-2]
	_ = x[Extern-3]
}

const _Kind_name = "CodeDataEntryExtern"

var _Kind_index = [...]uint8{0, 4, 8, 13, 19}

func (i Kind) String() string {
	if i >= Kind(len(_Kind_index)-1) {
		return "Kind(" + strconv.FormatInt(int64(i), 10) + ")"
	}

	return _Kind_name[_Kind_index[i]:_Kind_index[i+1]]
}
