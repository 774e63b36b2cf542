/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/gmofishsauce/formasm/cmd"

func main() {
	cmd.Execute()
}
