package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	statsDate  string
	statsSort  string
	statsOrder string
)

func init() {
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Only count matches played on this day (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsSort, "sort", "", "Sort key: name, games, winrate, wins or losses")
	statsCmd.Flags().StringVar(&statsOrder, "order", "", "Sort order: asc or desc")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(matchDatesCmd)
	rootCmd.AddCommand(adminsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, "/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, "/api/players", nil)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player NAME",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodPost, "/api/player", map[string]string{"name": args[0]})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-player, per-role statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, statsEndpoint(statsDate, statsSort, statsOrder), nil)
	},
}

var matchDatesCmd = &cobra.Command{
	Use:   "match-dates",
	Short: "List the days matches were played on",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, "/api/match-dates", nil)
	},
}

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "List admin accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, "/api/admins", nil)
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the latest admin audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, "/api/admin/logs", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, "/metrics", nil)
	},
}

func statsEndpoint(date, sortKey, order string) string {
	q := url.Values{}
	for key, value := range map[string]string{"date": date, "sort": sortKey, "order": order} {
		if value != "" {
			q.Set(key, value)
		}
	}
	if len(q) == 0 {
		return "/api/stats"
	}
	return "/api/stats?" + q.Encode()
}

// performRequest sends one request bounded by the --timeout flag. Error
// statuses are printed and then returned so the process exits non-zero.
func performRequest(ctx context.Context, out io.Writer, method, endpoint string, payload any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	url := host + endpoint
	fmt.Fprintf(out, "Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(respBody))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return nil
}
