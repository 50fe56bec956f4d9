package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/httpfetch"
)

var getOutputPath string

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Perform one HTTPS/HTTP GET and print or save the body",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVarP(&getOutputPath, "output", "o", "", "write the body to this file instead of stdout")
}

func runGet(cmd *cobra.Command, args []string) error {
	req, err := parseGetURL(args[0])
	if err != nil {
		return err
	}
	req.SinkPath = getOutputPath

	var bar *progressbar.ProgressBar
	if !quiet && globals.TTY {
		bar = progressbar.DefaultBytes(-1, "downloading")
		req.Progress = func(downloaded int64, contentLength *int64, done bool) {
			if contentLength != nil {
				bar.ChangeMax64(*contentLength)
			}
			_ = bar.Set64(downloaded)
			if done {
				_ = bar.Close()
			}
		}
	}

	result, err := httpfetch.Get(context.Background(), req)
	if err != nil {
		return err
	}

	if result.Location != "" {
		fmt.Printf("redirect -> %s\n", result.Location)
		return nil
	}

	if getOutputPath == "" {
		fmt.Print(string(result.Body))
	} else if !quiet {
		var n int64
		if fi, err := os.Stat(getOutputPath); err == nil {
			n = fi.Size()
		}
		fmt.Printf("wrote %d bytes to %s\n", n, getOutputPath)
	}
	return nil
}

// parseGetURL splits a URL into the scheme/host/port/target quadruple
// httpfetch.Request expects, filling in the default port per scheme when
// the caller didn't specify one.
func parseGetURL(raw string) (httpfetch.Request, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return httpfetch.Request{}, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return httpfetch.Request{}, fmt.Errorf("unsupported scheme %q (only http/https)", u.Scheme)
	}

	port := 80
	if u.Scheme == "https" {
		port = 443
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return httpfetch.Request{}, fmt.Errorf("invalid port %q: %w", p, err)
		}
	}

	target := u.RequestURI()
	if target == "" {
		target = "/"
	}

	return httpfetch.Request{
		Scheme: u.Scheme,
		Host:   u.Hostname(),
		Port:   port,
		Target: target,
	}, nil
}
