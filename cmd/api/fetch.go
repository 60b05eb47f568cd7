package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/students/backend/internal/model/student"
	"github.com/zhouzirui/students/backend/internal/service/upstream"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the students once and print them",
	Long: `Fetch the student list from the upstream directory and print it to
stdout without starting the server. Useful to check UPSTREAM_URL.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("format", "f", "json", "output format (json or yaml)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q", format)
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := upstream.NewClient(cfg.Upstream.URL, cfg.Upstream.Timeout)
	defer client.Close()

	students, err := client.FetchStudents(cmd.Context())
	if err != nil {
		return err
	}
	return writeStudents(cmd.OutOrStdout(), format, students)
}

func writeStudents(w io.Writer, format string, students []student.Student) error {
	if students == nil {
		students = []student.Student{}
	}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(students); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(students)
	}
}
