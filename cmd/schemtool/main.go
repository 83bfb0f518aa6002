package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/messages"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/version"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/fatih/color"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const usage = `usage: schemtool <command> [arguments]

commands:
  inspect <file>        print the header, anchor, bounds and type counts of a schematic
  convert <in> <out>    re-encode a schematic, zstd compressed if <out> ends in .zst
  watch [-url url]      print the events of a running server
  version               print the version`

// anyWorld resolves every world name, so anchors survive outside a server.
type anyWorld struct{}

func (anyWorld) Get(name string) (world.World, bool) {
	return world.NewGrid(name, world.GridOptions{}), true
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "inspect":
		if len(args) != 1 {
			err = fmt.Errorf("inspect takes one file")
			break
		}
		err = inspect(os.Stdout, args[0])
	case "convert":
		if len(args) != 2 {
			err = fmt.Errorf("convert takes an input and an output file")
			break
		}
		err = convert(os.Stdout, args[0], args[1])
	case "watch":
		fs := flag.NewFlagSet("watch", flag.ExitOnError)
		url := fs.String("url", "ws://localhost:8080/events", "Event stream URL")
		fs.Parse(args)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = watch(ctx, os.Stdout, *url)
	case "version":
		fmt.Println(version.Get())
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func inspect(w io.Writer, path string) error {
	s, err := schematic.ReadFile(path, anyWorld{})
	if err != nil {
		return err
	}

	heading := color.New(color.FgCyan, color.Bold)
	encoding := "plain"
	if schematic.IsCompressed(path) {
		encoding = "zstd"
	}
	heading.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "format version %d, %s\n", schematic.FormatVersion, encoding)
	fmt.Fprintf(w, "entries %d\n", s.Len())
	if anchor, ok := s.Anchor(); ok {
		fmt.Fprintf(w, "anchor %s\n", anchor)
	} else {
		fmt.Fprintf(w, "anchor none\n")
	}
	if bounds, ok := s.Bounds(); ok {
		size := bounds.Size()
		fmt.Fprintf(w, "bounds %s .. %s (%dx%dx%d)\n", bounds.Min, bounds.Max, size.X(), size.Y(), size.Z())
	}

	counts := s.TypeCounts()
	types := make([]string, 0, len(counts))
	for typ := range counts {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	heading.Fprintf(w, "types\n")
	for _, typ := range types {
		fmt.Fprintf(w, "  %-24s %d\n", typ, counts[typ])
	}
	return nil
}

func convert(w io.Writer, in, out string) error {
	s, err := schematic.ReadFile(in, anyWorld{})
	if err != nil {
		return err
	}
	if err := schematic.WriteFile(out, s); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(w, "wrote %d entries to %s\n", s.Len(), out)
	return nil
}

var eventColors = map[string]*color.Color{
	messages.MessageTypeServerPasteFinished:  color.New(color.FgGreen),
	messages.MessageTypeServerPasteCancelled: color.New(color.FgYellow),
	messages.MessageTypeServerSchematicSaved: color.New(color.FgBlue),
	messages.MessageTypeServerStats:          color.New(color.FgHiBlack),
}

// watch prints every event from the server until ctx is done or the server
// closes the stream.
func watch(ctx context.Context, w io.Writer, url string) error {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", url, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	color.New(color.FgCyan).Fprintf(w, "watching %s\n", url)

	for {
		msg := &messages.Message{}
		if err := wsjson.Read(ctx, conn, msg); err != nil {
			if ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			return fmt.Errorf("failed to read event: %v", err)
		}
		c, ok := eventColors[msg.Type]
		if !ok {
			c = color.New(color.Reset)
		}
		ts := time.UnixMilli(msg.Timestamp).Format(time.TimeOnly)
		c.Fprintf(w, "%s %-16s", ts, msg.Type)
		fmt.Fprintf(w, " %s\n", msg.Payload)
	}
}
