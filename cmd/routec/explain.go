package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code]",
		Short: "Describe an error code",
		Long: `Describe an error code such as R103, or list every code when called
without one.

Examples:
  routec explain
  routec explain r101`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listCodes(os.Stdout)
				return nil
			}
			return explainCode(os.Stdout, args[0])
		},
	}
}

// listCodes prints one "CODE  category  message" line per registered code.
func listCodes(w io.Writer) {
	for _, code := range errors.GetAllCodes() {
		t, _ := errors.GetTemplate(code)
		fmt.Fprintf(w, "%-6s %-9s %s\n", code, t.Category, t.Message)
	}
}

func explainCode(w io.Writer, code string) error {
	code = strings.ToUpper(code)
	text, ok := errors.Explain(code)
	if !ok {
		return errors.New("S101").
			WithDetail(fmt.Sprintf("%q is not a known error code.", code)).
			WithSuggestion("Run routec explain to list all codes")
	}
	fmt.Fprint(w, text)
	return nil
}
