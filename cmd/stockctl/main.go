// stockctl es la CLI de operación: aplica migraciones y crea usuarios
// (la API no expone registro público).
//
// Uso:
//
//	stockctl migrate
//	stockctl user create --username admin --password '...' [--email admin@example.com]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
