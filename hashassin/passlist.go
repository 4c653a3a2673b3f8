package main

import (
	"bufio"
	"fmt"
	"os"
	"unicode/utf8"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

// readPasswords loads a line-oriented password list and enforces that every line holds the
// same number of symbols; a table or hash file cannot mix password lengths.
func readPasswords(path string) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var passwords []string
	length := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		pw := scanner.Text()
		n := utf8.RuneCountInString(pw)
		if line == 1 {
			length = n
		} else if n != length {
			return nil, 0, fmt.Errorf("%w: line %d holds %d symbols, line 1 holds %d",
				errUsage, line, n, length)
		}
		passwords = append(passwords, pw)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	if len(passwords) == 0 {
		return nil, 0, fmt.Errorf("%w: password list %q is empty", errUsage, path)
	}
	return passwords, length, nil
}
