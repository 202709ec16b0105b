package kabi

// KStr is an in/out descriptor for one variable-length text field.
//
// On submission Len is the capacity offered, which is len(Buf). On return,
// if the field fit, Len is the number of bytes written into Buf; if it did
// not fit, Len is the number of bytes that would have sufficed and Buf is
// left untouched.
type KStr struct {
	Buf []byte
	Len int
}

// Offer resets Len to the full capacity of Buf before a submission.
func (s *KStr) Offer() {
	s.Len = len(s.Buf)
}

// Fits reports whether the last reported length fits in Buf.
func (s *KStr) Fits() bool {
	return s.Len >= 0 && s.Len <= len(s.Buf)
}

// Grow replaces Buf with a buffer of exactly n bytes when n exceeds the
// current capacity. It reports whether the buffer changed. Capacity never
// shrinks.
func (s *KStr) Grow(n int) bool {
	if n <= len(s.Buf) {
		return false
	}
	s.Buf = make([]byte, n)
	s.Len = n
	return true
}

// Bytes returns the committed contents, or nil if the field has not fit yet.
func (s *KStr) Bytes() []byte {
	if !s.Fits() {
		return nil
	}
	return s.Buf[:s.Len]
}

// String returns the committed contents as text.
func (s *KStr) String() string {
	return string(s.Bytes())
}

// Put is the kernel side of the descriptor contract. It copies v into Buf and
// records the written length when v fits, otherwise it records the required
// length and writes nothing. It reports whether v fit.
func (s *KStr) Put(v []byte) bool {
	if len(v) > len(s.Buf) {
		s.Len = len(v)
		return false
	}
	copy(s.Buf, v)
	s.Len = len(v)
	return true
}
