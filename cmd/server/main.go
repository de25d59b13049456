package main

func main() {
	setupServeCmd()
	setupInvokeCmd()
	Execute()
}
