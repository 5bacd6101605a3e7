package progress_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/FAU-CDI/hexastore/pkg/progress"
)

func ExampleReader() {
	source := strings.NewReader("hello world")
	var builder strings.Builder

	reader := &progress.Reader{
		Reader: source,
		Total:  source.Size(),

		Rewritable: progress.Rewritable{
			FlushInterval: 0,
			Writer:        &builder,
		},
	}

	buffer := make([]byte, 5)
	_, _ = reader.Read(buffer)
	_, _ = io.ReadAll(reader)

	// replace all the '\r's with '\n's for testing
	fmt.Println(strings.ReplaceAll(builder.String(), "\r", "\n"))

	// Output: Read 5 B of 11 B (45%)
	// Read 11 B of 11 B (100%)
	// Read 11 B of 11 B (100%)
}

func ExampleWriter() {
	var builder strings.Builder

	writer := &progress.Writer{
		Writer: io.Discard,

		Rewritable: progress.Rewritable{
			FlushInterval: 0,
			Writer:        &builder,
		},
	}

	_, _ = writer.Write([]byte("hello"))
	_, _ = writer.Write([]byte(" world"))

	// replace all the '\r's with '\n's for testing
	fmt.Println(strings.ReplaceAll(builder.String(), "\r", "\n"))

	// Output: Wrote 5 B
	// Wrote 11 B
}
