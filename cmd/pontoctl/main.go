// Command pontoctl runs time-clock maintenance tasks against the database.
package main

func main() {
	Execute()
}
