package mediainfo

// entryPoints is the set of string-carrying native functions a session
// dispatches through. It is chosen once, at negotiation, so a session never
// mixes wide and narrow calls.
type entryPoints struct {
	variant string
	open    func(handle, fileName uintptr) uintptr
	get     func(handle, streamKind, streamNumber, parameter, infoKind, searchKind uintptr) uintptr
	getI    func(handle, streamKind, streamNumber, parameter, infoKind uintptr) uintptr
	option  func(handle, option, value uintptr) uintptr
}

func wideEntryPoints(lib *nativeLib) entryPoints {
	return entryPoints{
		variant: "wide",
		open:    lib.open,
		get:     lib.get,
		getI:    lib.getI,
		option:  lib.option,
	}
}

func narrowEntryPoints(lib *nativeLib) entryPoints {
	return entryPoints{
		variant: "narrow",
		open:    lib.openA,
		get:     lib.getA,
		getI:    lib.getIA,
		option:  lib.optionA,
	}
}

func selectEntryPoints(lib *nativeLib, mode Mode) entryPoints {
	if mode.Narrow {
		return narrowEntryPoints(lib)
	}
	return wideEntryPoints(lib)
}

// callSurface binds a negotiated mode to a handle. All string traffic of a
// session goes through it.
type callSurface struct {
	lib     *nativeLib
	handle  uintptr
	calls   entryPoints
	marshal marshaler
	metrics *Metrics
}

func (c *callSurface) openFile(path string) (int, error) {
	pPath, free, err := c.marshal.param(path)
	if err != nil {
		return 0, err
	}
	defer free()

	c.metrics.nativeCall("open", c.calls.variant)
	return int(c.calls.open(c.handle, pPath)), nil
}

func (c *callSurface) getByName(kind StreamKind, number int, parameter string, info, search InfoKind) (string, error) {
	pParam, free, err := c.marshal.param(parameter)
	if err != nil {
		return "", err
	}
	defer free()

	c.metrics.nativeCall("get", c.calls.variant)
	ret := c.calls.get(c.handle, uintptr(kind), uintptr(number), pParam, uintptr(info), uintptr(search))
	return c.marshal.result(ret), nil
}

func (c *callSurface) getByIndex(kind StreamKind, number, parameter int, info InfoKind) string {
	c.metrics.nativeCall("get_i", c.calls.variant)
	ret := c.calls.getI(c.handle, uintptr(kind), uintptr(number), uintptr(parameter), uintptr(info))
	return c.marshal.result(ret)
}

func (c *callSurface) setOption(option, value string) (string, error) {
	pOption, freeOption, err := c.marshal.param(option)
	if err != nil {
		return "", err
	}
	defer freeOption()

	pValue, freeValue, err := c.marshal.param(value)
	if err != nil {
		return "", err
	}
	defer freeValue()

	c.metrics.nativeCall("option", c.calls.variant)
	return c.marshal.result(c.calls.option(c.handle, pOption, pValue)), nil
}

func (c *callSurface) state() int {
	c.metrics.nativeCall("state_get", "common")
	return int(c.lib.stateGet(c.handle))
}

func (c *callSurface) count(kind StreamKind, number int) int {
	c.metrics.nativeCall("count_get", "common")
	return int(c.lib.countGet(c.handle, uintptr(kind), uintptr(number)))
}
