// Command humankey derives a Human Key from pulse data through a Human Network signer.
package main

import "humankey/cmd/humankey/cmd"

func main() {
	cmd.Execute()
}
