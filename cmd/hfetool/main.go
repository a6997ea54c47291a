// Command hfetool converts between TI-99 sector images and HFE flux images.
package main

func main() {
	Execute()
}
