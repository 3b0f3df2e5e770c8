package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vexlabs/vexcheck/pkg/cli"
	"github.com/vexlabs/vexcheck/pkg/probe"
)

var apiAddress string

func init() {
	status.Flags().StringVar(&apiAddress, "api-address", "http://localhost:9102", "address of a running 'vexcheck serve' instance")
	status.Flags().BoolP("json", "j", false, "Print probe status as JSON")
	status.Flags().Bool("follow", false, "Stream probe status continuously")
	status.Flags().Bool("exit-with-status", false, "Exit with status code 0 if all probes pass, 1 if not")

	rootCmd.AddCommand(status)
}

var status = &cobra.Command{
	Use:   "status",
	Short: "Show the probe status of a running 'vexcheck serve'",
	Long:  "This command queries the status endpoint of a running 'vexcheck serve' instance and prints one line per configured probe.",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiClient := cli.NewAPIClient(apiAddress)

		if follow, _ := cmd.Flags().GetBool("follow"); follow {
			return apiClient.Watch().Print()
		}

		if printJSON, _ := cmd.Flags().GetBool("json"); printJSON {
			resp := apiClient.StatusRaw()
			if resp.Err() != nil {
				return fmt.Errorf("failed to get probe status: %w", resp.Err())
			}
			return resp.Print()
		}

		resp := apiClient.Status()
		if resp.Err() != nil {
			return fmt.Errorf("failed to get probe status: %w", resp.Err())
		}

		names := make([]string, 0, len(resp.Body.Probes))
		for name := range resp.Body.Probes {
			names = append(names, name)
		}
		sort.Strings(names)

		allOK := true
		for _, name := range names {
			fmt.Println(probeStatusLine(name, resp.Body.Probes[name]))
			allOK = allOK && resp.Body.Probes[name].OK
		}

		if allOK {
			fmt.Println(styleSuccess.Render("all probes healthy"))
		} else {
			fmt.Println(styleFailed.Render("some probes are failing"))
		}

		if exitWithStatus, _ := cmd.Flags().GetBool("exit-with-status"); exitWithStatus && !allOK {
			os.Exit(1)
		}

		return nil
	},
}

func probeStatusLine(name string, result *probe.Result) string {
	if result.OK {
		return lipgloss.JoinHorizontal(lipgloss.Left,
			styleSuccess.Render("▶︎"), " ",
			styleHighlight.Render(name), " (",
			styleSuccess.Render("healthy"), ")",
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		styleFailed.Render("◼︎"), " ",
		styleHighlight.Render(name), " (",
		styleFailed.Render("failing"), "; reason=",
		styleHighlight.Render(result.Message), ")",
	)
}
