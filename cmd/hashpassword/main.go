// Command hashpassword prints a bcrypt hash for admin.password_hash.
//
//	go run ./cmd/hashpassword 's3cret'
//	echo -n 's3cret' | go run ./cmd/hashpassword
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/auth"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

func main() {
	password, err := readPassword(os.Args[1:])
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read password")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		os.Exit(1)
	}
	fmt.Println(hash)
}

func readPassword(args []string) (string, error) {
	var password string
	if len(args) > 0 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("no password given on the command line or stdin: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}
