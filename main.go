/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "poster/cmd"

func main() {
	cmd.Execute()
}
