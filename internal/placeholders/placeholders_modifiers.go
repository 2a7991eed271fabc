package placeholders

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
)

func upperModifier(input string, args []string) (string, error) {
	return strings.ToUpper(input), nil
}

func lowerModifier(input string, args []string) (string, error) {
	return strings.ToLower(input), nil
}

func trimModifier(input string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return strings.TrimSpace(input), nil
	case 1:
		return strings.Trim(input, args[0]), nil
	default:
		return "", fmt.Errorf("trim modifier expects at most one argument, got %d. %w", len(args), lib.BadUserInputError)
	}
}

func replaceModifier(input string, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("replace modifier expects exactly two arguments, got %d. %w", len(args), lib.BadUserInputError)
	}
	return strings.Replace(input, args[0], args[1], 1), nil
}

func replaceAllModifier(input string, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("replace_all modifier expects exactly two arguments, got %d. %w", len(args), lib.BadUserInputError)
	}
	return strings.ReplaceAll(input, args[0], args[1]), nil
}

// defaultModifier substitutes a fallback for empty values, e.g. a payload field that resolved to null.
func defaultModifier(input string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("default modifier expects exactly one argument, got %d. %w", len(args), lib.BadUserInputError)
	}
	if input == "" {
		return args[0], nil
	}
	return input, nil
}

func padLeftModifier(input string, args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("pad_left modifier expects one or two arguments, got %d. %w", len(args), lib.BadUserInputError)
	}

	width, err := strconv.Atoi(args[0])
	if err != nil || width < 0 {
		return "", fmt.Errorf("pad_left width must be a non negative integer, got %q. %w", args[0], lib.BadUserInputError)
	}

	pad := " "
	if len(args) == 2 {
		if utf8.RuneCountInString(args[1]) != 1 {
			return "", fmt.Errorf("pad_left fill must be a single character, got %q. %w", args[1], lib.BadUserInputError)
		}
		pad = args[1]
	}

	missing := width - utf8.RuneCountInString(input)
	if missing <= 0 {
		return input, nil
	}
	return strings.Repeat(pad, missing) + input, nil
}
