package cache

import "github.com/valyala/bytebufferpool"

// Key joins non-empty parts with ':'.
func Key(parts ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, p := range parts {
		if p == "" {
			continue
		}
		if buf.Len() > 0 {
			_ = buf.WriteByte(':')
		}
		_, _ = buf.WriteString(p)
	}
	return buf.String()
}
