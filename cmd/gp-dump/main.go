// gp-dump prints a summary of a Guitar Pro file: its container type,
// version, and score metadata.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/gptab/gpxscore/gpx"
	"github.com/gptab/gpxscore/internal/typedio"
	"github.com/gptab/gpxscore/legacy"
)

var flagAutodetect bool

func init() {
	flag.BoolVar(&flagAutodetect, "autodetect-encoding", false, "Autodetect the text codepage instead of assuming Windows-1252.")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: gp-dump [OPTION]... FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if err := dump(path); err != nil {
			log.Fatalln(err)
		}
	}
}

func dump(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	opts := typedio.Options{Autodetect: flagAutodetect}

	switch gpx.CheckFileType(data) {
	case gpx.TypeBCFS, gpx.TypeBCFZ:
		files, err := gpx.Read(data)
		if err != nil {
			return err
		}
		fmt.Printf("container: GPX (%d embedded files)\n", len(files))
		for _, f := range files {
			fmt.Printf("  %s (%d bytes)\n", f.Name, len(f.Data))
		}
		return nil
	default:
		version, song, err := legacy.ReadWithOptions(data, opts)
		if err != nil {
			return err
		}
		listSong(version, song)
		return nil
	}
}

func listSong(version legacy.Version, song *legacy.Song) {
	fmt.Printf("container: legacy stream (%s)\n", version)
	fmt.Printf("  title: %s\n", song.Info.Title)
	fmt.Printf("  artist: %s\n", song.Info.Artist)
	fmt.Printf("  album: %s\n", song.Info.Album)
	fmt.Printf("  tempo: %d\n", song.Tempo)
	fmt.Printf("  measures: %d\n", len(song.MeasureHeaders))
	fmt.Printf("  tracks: %d\n", len(song.Tracks))
	for i, t := range song.Tracks {
		fmt.Printf("    track[%d]: %s (%d strings, %d measures)\n", i, t.Name, len(t.Strings), len(t.Measures))
	}
}
