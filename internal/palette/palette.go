package palette

import "github.com/thenewark/arklights/internal/brightness"

// NumNotes is the number of pitch classes.
const NumNotes = 12

// The mapping is based on Scriabin's sound-to-color synesthesia
// mapping (see the Wikipedia page on Chromesthesia). In truth, the
// association between sound and color is highly idiosyncratic
// amongst sound-to-color synesthetes.
var noteColors = [NumNotes]brightness.Color{
	{R: 0xFF, G: 0x00, B: 0x00}, // C    "Red"
	{R: 0xCE, G: 0x9A, B: 0xFF}, // Db   "Violet"
	{R: 0xFF, G: 0xFF, B: 0x00}, // D    "Yellow"
	{R: 0x65, G: 0x65, B: 0x99}, // Eb   "Steel color with metallic sheen"
	{R: 0xE3, G: 0xFB, B: 0xFF}, // E    "Whitish-blue"
	{R: 0xAC, G: 0x1C, B: 0x00}, // F    "Red, dark"
	{R: 0x00, G: 0xCC, B: 0xFF}, // Gb   "Blue, bright"
	{R: 0xFF, G: 0x65, B: 0x00}, // G    "Orange-pink"
	{R: 0xFF, G: 0x00, B: 0xFF}, // Ab   "Purplish-violet"
	{R: 0x33, G: 0xCC, B: 0x33}, // A    "Green"
	{R: 0x8C, G: 0x8A, B: 0x8C}, // Bb   "Similar to Eb"
	{R: 0x00, G: 0x00, B: 0xFE}, // B    "Similar to E"
}

var noteNames = [NumNotes]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// ColorOf returns the color of a pitch class. The protocol decoder
// guarantees note is in [0, NumNotes).
func ColorOf(note int) brightness.Color {
	return noteColors[note]
}

// Name returns the pitch-class name for logs.
func Name(note int) string {
	return noteNames[note]
}
