package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vexlabs/vexcheck/pkg/diag"
)

func init() {
	rootCmd.AddCommand(check)
}

var check = &cobra.Command{
	Use:   "check",
	Short: "Test the database connections of the local Vex stack",
	Long:  "This sub-command tests the ChromaDB heartbeat, the Milvus health endpoint and the Milvus Attu UI once each, prints a result line per service and exits non-zero if any of them is unreachable",
	Run: func(cmd *cobra.Command, args []string) {
		if !runChecks(os.Stdout, diag.StackChecks()) {
			os.Exit(1)
		}
	},
}

// runChecks probes every check in order, writing the report to out.
// It returns true only if every single check passed.
func runChecks(out io.Writer, checks []diag.Check) bool {
	divider := strings.Repeat("=", 50)

	fmt.Fprintln(out, styleHeading.Render("🔍 Testing Vex Extension Database Connections..."))
	fmt.Fprintln(out, divider)

	results := make([]diag.Result, 0, len(checks))

	for _, c := range checks {
		fmt.Fprintf(out, "\n📊 Testing %s...\n", c.Name)

		result := c.Run()
		results = append(results, result)

		fmt.Fprintln(out, resultLine(result))
	}

	fmt.Fprintln(out, "\n"+divider)

	if !diag.AllSuccessful(results) {
		fmt.Fprintln(out, styleFailed.Render("⚠️  Some connections failed. Please check your Docker setup."))
		return false
	}

	fmt.Fprintln(out, styleSuccessBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		styleSuccess.Render("🎉 All database connections successful!"),
		"",
		"📋 Connection Details:",
		styleListItem.Render("ChromaDB:  "+styleHighlight.Render("http://localhost:8000")),
		styleListItem.Render("Milvus:    "+styleHighlight.Render("localhost:19530")),
		styleListItem.Render("Milvus UI: "+styleHighlight.Render("http://localhost:3000")),
		"",
		"🚀 You can now test your Vex extension!",
	)))

	return true
}

func resultLine(result diag.Result) string {
	if result.OK() {
		return lipgloss.JoinHorizontal(lipgloss.Left, styleSuccess.Render("✅"), " ", result.Message)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, styleFailed.Render("❌"), " ", result.Message)
}
