// lottoctl - command-line ticket generator and odds calculator
package main

import "github.com/ArowuTest/lottogen-backend/internal/cli"

func main() {
	cli.Execute()
}
