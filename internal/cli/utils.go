package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptWithRetry asks until validator accepts the answer. The empty answer is
// passed to the validator too, so defaults are handled there.
func promptWithRetry(reader *bufio.Reader, out io.Writer, prompt string, validator func(string) (string, error)) (string, error) {
	for {
		fmt.Fprint(out, prompt)
		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		input = strings.TrimSpace(input)

		result, vErr := validator(input)
		if vErr == nil {
			return result, nil
		}
		if err == io.EOF {
			return "", vErr
		}

		fmt.Fprintf(out, "%s\n\n", FormatError("❌ "+vErr.Error()))
	}
}

// promptYesNo prompts for yes/no input; an empty answer means no
func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	result, err := promptWithRetry(reader, out, prompt, func(input string) (string, error) {
		lower := strings.ToLower(input)
		if lower == "y" || lower == "yes" || lower == "n" || lower == "no" || lower == "" {
			return lower, nil
		}
		return "", fmt.Errorf("invalid input: %s (enter y/yes/n/no or press Enter for no)", input)
	})
	if err != nil {
		return false, err
	}

	return result == "y" || result == "yes", nil
}

// promptDefault prompts for a value, using defaultValue for an empty answer.
// validate may be nil.
func promptDefault(reader *bufio.Reader, out io.Writer, label, defaultValue string, validate func(string) (string, error)) (string, error) {
	prompt := fmt.Sprintf("%s [%s]: ", label, defaultValue)
	if defaultValue == "" {
		prompt = label + ": "
	}

	return promptWithRetry(reader, out, prompt, func(input string) (string, error) {
		if input == "" {
			input = defaultValue
		}
		if validate == nil {
			return input, nil
		}
		return validate(input)
	})
}

// truncateMiddle shortens text to max runes, keeping its start and end
func truncateMiddle(text string, max int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= max || max < 5 {
		return string(runes)
	}
	half := (max - 3) / 2
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}
