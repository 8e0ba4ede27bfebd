package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var appPort, proxyPort string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the server under air with hot reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			airPath, err := exec.LookPath("air")
			if err != nil {
				return fmt.Errorf("air not found, install with: go install github.com/air-verse/air@latest")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Building bin/do...")
			build := exec.Command("go", "build", "-o", "bin/do", "./cmd/do")
			build.Stdout = os.Stdout
			build.Stderr = os.Stderr
			if err := build.Run(); err != nil {
				return fmt.Errorf("build do: %w", err)
			}

			return syscall.Exec(airPath, airArgs(appPort, proxyPort), devEnv(os.Environ(), appPort))
		},
	}

	cmd.Flags().StringVar(&appPort, "port", "8090", "port the server listens on")
	cmd.Flags().StringVar(&proxyPort, "proxy-port", "8080", "port of the live-reload proxy")
	return cmd
}

func airArgs(appPort, proxyPort string) []string {
	return []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "./bin/do gen && go build -o ./tmp/main ./cmd/server",
		"-build.bin", "./tmp/main",
		"-build.delay", "100",
		"-build.exclude_dir", "bin,tmp,_examples",
		"-build.exclude_regex", "_templ.go$|_test.go$",
		"-build.include_ext", "go,templ",
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
		"-proxy.enabled", "true",
		"-proxy.proxy_port", proxyPort,
		"-proxy.app_port", appPort,
	}
}

// devEnv defaults APP_ENV to development and pins PORT to the proxied port.
func devEnv(env []string, appPort string) []string {
	if _, ok := os.LookupEnv("APP_ENV"); !ok {
		env = append(env, "APP_ENV=development")
	}
	return append(env, "PORT="+appPort)
}
