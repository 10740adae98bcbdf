package display

import (
	"fmt"
	"strings"
)

// RenderBoard colors the server's ASCII board: Upper (uppercase) pieces blue,
// Down (lowercase) pieces red, coordinates cyan.
func RenderBoard(asciiBoard string) {
	for _, line := range strings.Split(asciiBoard, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		isFileLine := strings.Contains(line, "a b c d e f g h")

		for _, char := range line {
			switch {
			case isFileLine && char >= 'a' && char <= 'h':
				fmt.Printf("%s%c%s", Cyan, char, Reset)
			case char >= 'A' && char <= 'Z':
				fmt.Printf("%s%c%s", Blue, char, Reset)
			case char >= 'a' && char <= 'z':
				fmt.Printf("%s%c%s", Red, char, Reset)
			case char >= '1' && char <= '8':
				fmt.Printf("%s%c%s", Cyan, char, Reset)
			default:
				fmt.Printf("%c", char)
			}
		}
		fmt.Println()
	}
}

// ColorForTurn returns a colored side name.
func ColorForTurn(turn string) string {
	if turn == "upper" {
		return Blue + "Upper" + Reset
	}
	return Red + "Down" + Reset
}
