package mediainfo

// nativeLib is the libmediainfo call surface. Every argument and result is
// pointer sized; strings travel as pointers to encoded buffers.
type nativeLib struct {
	name string

	newHandle    func() uintptr
	deleteHandle func(handle uintptr)
	open         func(handle, fileName uintptr) uintptr
	openA        func(handle, fileName uintptr) uintptr
	close        func(handle uintptr)
	get          func(handle, streamKind, streamNumber, parameter, infoKind, searchKind uintptr) uintptr
	getA         func(handle, streamKind, streamNumber, parameter, infoKind, searchKind uintptr) uintptr
	getI         func(handle, streamKind, streamNumber, parameter, infoKind uintptr) uintptr
	getIA        func(handle, streamKind, streamNumber, parameter, infoKind uintptr) uintptr
	option       func(handle, option, value uintptr) uintptr
	optionA      func(handle, option, value uintptr) uintptr
	stateGet     func(handle uintptr) uintptr
	countGet     func(handle, streamKind, streamNumber uintptr) uintptr
}

// Symbol names exported by libmediainfo.
const (
	symNew      = "MediaInfo_New"
	symDelete   = "MediaInfo_Delete"
	symOpen     = "MediaInfo_Open"
	symOpenA    = "MediaInfoA_Open"
	symClose    = "MediaInfo_Close"
	symGet      = "MediaInfo_Get"
	symGetA     = "MediaInfoA_Get"
	symGetI     = "MediaInfo_GetI"
	symGetIA    = "MediaInfoA_GetI"
	symOption   = "MediaInfo_Option"
	symOptionA  = "MediaInfoA_Option"
	symStateGet = "MediaInfo_State_Get"
	symCountGet = "MediaInfo_Count_Get"
)

// IsAvailable reports whether libmediainfo can be loaded from the default
// locations.
func IsAvailable() bool {
	_, err := loadNative("")
	return err == nil
}
