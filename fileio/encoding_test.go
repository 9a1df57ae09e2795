package fileio

import "testing"

func TestDecodeLine_ValidUTF8Passthrough(t *testing.T) {
	in := []byte("hello éè world")
	if got := decodeLine(in); got != string(in) {
		t.Errorf("expected valid UTF-8 to pass through unchanged, got %q", got)
	}
}

func TestDecodeLine_Latin1Fallback(t *testing.T) {
	// 0xE9 is Latin-1 for 'e' with acute accent but not valid UTF-8 on
	// its own.
	in := []byte{'c', 'a', 'f', 0xE9}
	got := decodeLine(in)
	want := "café"
	if got != want {
		t.Errorf("decodeLine(%v) = %q, want %q", in, got, want)
	}
}

func TestDecodeLine_UndecodableFallsBackToReplacement(t *testing.T) {
	// A lone continuation byte is invalid UTF-8; every fallback
	// charmap still decodes every byte value, so this path mostly
	// exercises that toValidUTF8 never panics when reached directly.
	in := []byte{0x80, 0x80}
	got := toValidUTF8(in)
	for _, r := range got {
		if r != '�' {
			t.Errorf("expected replacement characters only, got %q", got)
		}
	}
}
