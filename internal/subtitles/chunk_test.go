package subtitles

import (
	"strings"
	"testing"
)

func TestSplitChunksShortTextSingleChunk(t *testing.T) {
	chunks := SplitChunks("静かな夜", 15)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "静かな夜" {
		t.Fatalf("unexpected chunk %q", chunks[0])
	}
}

func TestSplitChunksBreaksAtDelimiterInLastPortion(t *testing.T) {
	// Delimiter sits past 40% of the window, so the cut lands just after it.
	text := "あいうえおかきくけ。こさしすせそたちつてと"
	chunks := SplitChunks(text, 15)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %v", chunks)
	}
	if !strings.HasSuffix(chunks[0], "。") {
		t.Fatalf("first chunk should end at the delimiter, got %q", chunks[0])
	}
}

func TestSplitChunksIgnoresEarlyDelimiter(t *testing.T) {
	// Delimiter within the first 40% of the window is not a break point.
	text := "あい。うえおかきくけこさしすせそたちつてと"
	chunks := SplitChunks(text, 15)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if count := len([]rune(chunks[0])); count != 15 {
		t.Fatalf("expected a full 15-rune first chunk, got %d runes: %q", count, chunks[0])
	}
}

func TestSplitChunksPreservesCharacters(t *testing.T) {
	text := "吾輩は猫である。名前はまだ無い。どこで生れたかとんと見当がつかぬ。"
	chunks := SplitChunks(text, 15)
	joined := strings.Join(chunks, "")
	want := strings.ReplaceAll(text, " ", "")
	got := strings.ReplaceAll(joined, " ", "")
	if got != want {
		t.Fatalf("characters lost in chunking:\nwant %q\ngot  %q", want, got)
	}
	for _, chunk := range chunks {
		if n := len([]rune(chunk)); n > 15 {
			t.Fatalf("chunk exceeds max chars (%d runes): %q", n, chunk)
		}
	}
}

func TestSplitChunksEmptyText(t *testing.T) {
	if chunks := SplitChunks("", 15); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
}

func TestSplitChunksKeepsWhitespaceWindowAsEmptyChunk(t *testing.T) {
	// A window of pure whitespace trims to an empty chunk but still
	// occupies a slot, so later chunks keep their even-division share.
	text := "あいうえお" + strings.Repeat("　", 5) + "かきくけこ"
	chunks := SplitChunks(text, 5)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "あいうえお" || chunks[1] != "" || chunks[2] != "かきくけこ" {
		t.Fatalf("unexpected chunks %q", chunks)
	}
}
