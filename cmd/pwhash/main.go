// Command pwhash hashes and verifies passwords with the drivers of package
// hashing, including crypt(3) compatible SHA-256-crypt and SHA-512-crypt.
//
//	pwhash hash --driver sha512crypt
//	pwhash verify '$6$rounds=10000$saltstringsaltst$OW1/...'
//	pwhash needs-rehash '$5$saltstring$5B8v...'
//	pwhash info '$argon2id$v=19$m=65536,t=3,p=2$...'
//
// Passwords are read from the terminal without echo, or as the first line of
// standard input when it is not a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newApp(nil).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
