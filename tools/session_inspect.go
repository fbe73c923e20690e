package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"komunikator/infrastructure/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

// Prints what the client remembers on this machine. Tokens are shortened.
func main() {
	_ = godotenv.Load()
	defaultPath := os.Getenv("SESSION_DB_PATH")
	if defaultPath == "" {
		defaultPath = ".komunikator"
	}
	dbPath := flag.String("db", defaultPath, "Path to the session store")
	flag.Parse()

	db, err := storage.OpenReadOnly(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoMergeCells(true)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				fields, err := storage.Decode(v)
				if err != nil {
					fmt.Printf("Error decoding key %s: %v\n", key, err)
					return nil
				}
				for _, row := range flatten("", fields) {
					table.Append([]string{key, row[0], row[1]})
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// flatten turns nested values into sorted dotted rows.
func flatten(prefix string, fields map[string]any) [][2]string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows [][2]string
	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		switch v := fields[k].(type) {
		case map[string]any:
			rows = append(rows, flatten(name, v)...)
		default:
			rows = append(rows, [2]string{name, display(name, v)})
		}
	}
	return rows
}

func display(name string, v any) string {
	s := fmt.Sprint(v)
	if strings.HasSuffix(name, "token") && len(s) > 12 {
		return s[:12] + "…"
	}
	return s
}
