// Command landing serves and renders the landing page.
package main

func main() {
	Execute()
}
