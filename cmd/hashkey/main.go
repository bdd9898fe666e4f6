// Command hashkey prints the bcrypt hash to put in API_KEY_HASH.
//
//	hashkey <api-key>
//	echo -n <api-key> | hashkey
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/auth"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
)

func main() {
	if err := logger.Init("error"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Fatalf("hashkey: %v", err)
	}
}

// run reads the key from the first argument, or from the first line of in.
func run(args []string, in io.Reader, out io.Writer) error {
	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read api key: %w", err)
		}
		key = strings.TrimRight(line, "\r\n")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key must not be empty")
	}

	hash, err := auth.HashSecret(key)
	if err != nil {
		return fmt.Errorf("hash api key: %w", err)
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
