// Command geoidx builds and queries geoidx indexes over the LiDAR text
// format, and benchmarks all three index variants against the same data.
// It replaces the out-of-scope timing/memusage harnesses with a single
// inspectable binary.
package main

func main() {
	Execute()
}
