package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planfolio-cli",
		Short: "Planfolio CLI tool",
		Long:  `A command line interface for interacting with the Planfolio API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Planfolio API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(planCmd(), paramsCmd(), holdingCmd(), flowCmd(), submitCmd(), resultCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/plan", nil)
		},
	})

	return cmd
}

func paramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Simulation parameter operations",
	}

	set := &cobra.Command{
		Use:   "set <json>",
		Short: "Update simulation parameters from a JSON object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPut, "/api/v1/plan/params", []byte(args[0]))
		},
	}

	cmd.AddCommand(set)
	return cmd
}

func holdingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holding",
		Short: "Holding operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <kind>",
		Short: "Add a defaulted holding to an account collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/plan/holdings/"+args[0], nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <kind> <id> <json>",
		Short: "Update holding fields from a JSON object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPatch, "/api/v1/plan/holdings/"+args[0]+"/"+args[1], []byte(args[2]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <kind> <id>",
		Short: "Remove a holding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/plan/holdings/"+args[0]+"/"+args[1], nil)
		},
	})

	return cmd
}

func flowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Income and expense flow operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <category>",
		Short: "Add a defaulted income or expense flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/plan/flows/"+args[0], nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <category> <id> <json>",
		Short: "Update flow fields from a JSON object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPatch, "/api/v1/plan/flows/"+args[0]+"/"+args[1], []byte(args[2]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <category> <id>",
		Short: "Remove a flow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodDelete, "/api/v1/plan/flows/"+args[0]+"/"+args[1], nil)
		},
	})

	return cmd
}

func submitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Run the plan through the simulation engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/plan/submit", nil)
		},
	}
}

func resultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result",
		Short: "Show the latest simulation result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/plan/result", nil)
		},
	}
}

// request performs one API call and pretty-prints the JSON response.
func request(method, path string, body []byte) error {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, payload)
	}

	var pretty any
	if err := json.Unmarshal(payload, &pretty); err != nil {
		fmt.Println(string(payload))
		return nil
	}
	printJSON(pretty)
	return nil
}

// printJSON prints a value as indented JSON.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(out))
}
