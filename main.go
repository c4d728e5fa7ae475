/*
Copyright © 2022 Joker
*/
package main

import "sysafari.com/customs/mguard/cmd"

func main() {
	cmd.Execute()
}
