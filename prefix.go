package duolog

import "strconv"

// prefixSegments lists the metadata fields of a prefix in emission order.
// The cut form drops the process identity down to address, host and name.
func prefixSegments(h HostInfo, name string, cut bool) []string {
	if cut {
		return []string{h.IP, h.Hostname, name}
	}
	return []string{
		strconv.Itoa(h.PID),
		h.Platform,
		h.Runtime,
		h.IP,
		h.Hostname,
		name,
	}
}

// buildPrefix constructs the plain metadata prefix:
// [pid][platform][runtime][ip][hostname][name], or [ip][hostname][name] in
// cut mode.
func buildPrefix(h HostInfo, name string, cut bool) string {
	buf := make([]byte, 0, 128)
	for _, seg := range prefixSegments(h, name, cut) {
		buf = append(buf, '[')
		buf = append(buf, seg...)
		buf = append(buf, ']')
	}
	return string(buf)
}

// buildColorPrefix constructs the colorized prefix, wrapping each bracketed
// segment individually in the default markup pair.
func buildColorPrefix(h HostInfo, name string, cut bool) string {
	buf := make([]byte, 0, 256)
	for _, seg := range prefixSegments(h, name, cut) {
		buf = append(buf, colorDefault...)
		buf = append(buf, '[')
		buf = append(buf, seg...)
		buf = append(buf, ']')
		buf = append(buf, colorReset...)
	}
	return string(buf)
}
