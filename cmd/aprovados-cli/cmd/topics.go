package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/aprovados/internal/pubsub"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var topicsOutputFormat string

var topicDescriptions = map[string]string{
	pubsub.TopicSubmissionStarted:   "A draft was sent to the backend",
	pubsub.TopicSubmissionSucceeded: "The backend accepted the registration",
	pubsub.TopicSubmissionFailed:    "The backend call failed; the draft is kept",
	pubsub.TopicDraftReset:          "A submitted draft was cleared",
}

type topic struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func topicList() []topic {
	list := make([]topic, 0, len(pubsub.SubmissionTopics))
	for _, name := range pubsub.SubmissionTopics {
		list = append(list, topic{Name: name, Description: topicDescriptions[name]})
	}
	return list
}

// topicsCmd lists the topics the server publishes on its message bus.
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the submission lifecycle topics",
	Long: `Lists the topics published while a registration is submitted, in the
order they occur.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON array
  yaml  - YAML list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch topicsOutputFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(topicList())
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(topicList()); err != nil {
				return err
			}
			return enc.Close()
		case "table":
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOPIC\tDESCRIPTION")
			for _, name := range pubsub.SubmissionTopics {
				fmt.Fprintf(w, "%s\t%s\n", name, topicDescriptions[name])
			}
			return w.Flush()
		default:
			return fmt.Errorf("unsupported output format %q, use 'table', 'json' or 'yaml'", topicsOutputFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.Flags().StringVarP(&topicsOutputFormat, "format", "f", "table", "Output format (table, json, yaml)")
}
