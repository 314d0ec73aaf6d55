package translator

import (
	"fmt"
	"regexp"
	"strconv"
)

// placeholderPattern matches %s, %d, %f and their positional forms such as %2$s.
var placeholderPattern = regexp.MustCompile(`%(?:(\d+)\$)?[sdf]`)

// Format substitutes args into the placeholders of s.
//
// A positional placeholder %N$s takes args[N-1]. A placeholder without an
// index always takes args[0]; it does not advance through the arguments, so
// "%s and %s" with ("a", "b") gives "a and a". Placeholders whose argument is
// missing are left as they are. Values are rendered with fmt.Sprint regardless
// of the verb.
func Format(s string, args ...any) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(token string) string {
		index := 0

		if m := placeholderPattern.FindStringSubmatch(token); m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				index = n - 1
			}
		}

		if index >= len(args) {
			return token
		}

		return fmt.Sprint(args[index])
	})
}
