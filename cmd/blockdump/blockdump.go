// Example: decode a file of Native blocks and print its rows, or its columns
// as JSON lines when -columnar is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/apache/arrow-go/v18/arrow/array"

	nb "github.com/nativeblock/gonativeblock"
)

func main() {
	input := flag.String("file", "", "file holding Native blocks")
	settings := flag.String("settings", "", "settings.toml to load, defaults to $GONATIVEBLOCK_HOME/settings.toml")
	serverTimezone := flag.String("server-tz", "", "server timezone, used when no settings file is given")
	columnar := flag.Bool("columnar", false, "merge blocks into columns and print them as JSON")
	withTypes := flag.Bool("types", false, "print the column header")
	if !flag.Parsed() {
		flag.Parse()
	}
	if *input == "" {
		log.Fatalf("-file is required")
	}

	ctx, err := loadContext(*settings, *serverTimezone)
	if err != nil {
		log.Fatalf("failed to load settings. err: %v", err)
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("failed to open %v. err: %v", *input, err)
	}
	defer f.Close()

	opts := []nb.QueryResultOption{nb.WithColumnTypes()}
	if *columnar {
		opts = append(opts, nb.Columnar())
	}
	result, err := nb.NewQueryResult(nb.NewBlockStream(f, ctx), opts...).GetResult(context.Background())
	if err != nil {
		log.Fatalf("failed to decode %v. err: %v", *input, err)
	}

	if *withTypes {
		for _, c := range result.ColumnsWithTypes {
			fmt.Printf("%v\t%v\n", c.Name, c.Type)
		}
	}
	if !*columnar {
		for _, row := range result.Rows {
			fmt.Println(row...)
		}
		return
	}
	rec, err := result.ToRecord()
	if err != nil {
		log.Fatalf("failed to build record. err: %v", err)
	}
	defer rec.Release()
	if err = array.RecordToJSON(rec, os.Stdout); err != nil {
		log.Fatalf("failed to print record. err: %v", err)
	}
}

func loadContext(settings, serverTimezone string) (*nb.Context, error) {
	if settings != "" {
		return nb.LoadContext(settings)
	}
	if serverTimezone != "" {
		return nb.NewContext(serverTimezone, nb.Settings{}), nil
	}
	if _, ok := os.LookupEnv("GONATIVEBLOCK_HOME"); ok {
		return nb.LoadDefaultContext()
	}
	return nb.NewContext("", nb.Settings{}), nil
}
