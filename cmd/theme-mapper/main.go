// cmd/theme-mapper/main.go
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	apperrors "theme-mapper/internal/common/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Stage failures were already reported to the operator.
		var stdErr *apperrors.StandardError
		if !stderrors.As(err, &stdErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
