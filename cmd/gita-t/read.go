package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/justyntemme/gita-t/internal/config"
	"github.com/justyntemme/gita-t/pkg/models"
)

const requestTimeout = 30 * time.Second

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the chapters of the Gita",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ctx, cancel, err := commandSetup(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		chapters, err := newClient(cfg).ListChapters(ctx)
		if err != nil {
			return err
		}
		return printChapters(cmd.OutOrStdout(), chapters)
	},
}

var verseLanguage string

var verseCmd = &cobra.Command{
	Use:   "verse <chapter> <verse>",
	Short: "Print one verse with its translations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, err := positiveArg("chapter", args[0])
		if err != nil {
			return err
		}
		verseNumber, err := positiveArg("verse", args[1])
		if err != nil {
			return err
		}

		cfg, ctx, cancel, err := commandSetup(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		verse, err := newClient(cfg).GetVerse(ctx, chapter, verseNumber)
		if err != nil {
			return err
		}
		lang := cfg.TranslationLanguage
		if verseLanguage != "" {
			lang = verseLanguage
		}
		return printVerse(cmd.OutOrStdout(), chapter, verse, lang)
	},
}

func init() {
	verseCmd.Flags().StringVar(&verseLanguage, "lang", "", "only show translations in this language")
	rootCmd.AddCommand(chaptersCmd, verseCmd)
}

// commandSetup loads config, logs to stderr and returns a context that is
// cancelled on interrupt or timeout
func commandSetup(cmd *cobra.Command) (*config.Config, context.Context, context.CancelFunc, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := setupLogging(cfg, cmd.ErrOrStderr()); err != nil {
		return nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	return cfg, ctx, func() {
		cancel()
		stop()
	}, nil
}

func positiveArg(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", name, s)
	}
	return n, nil
}

func printChapters(w io.Writer, chapters []models.Chapter) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTRANSLATED\tVERSES")
	for _, c := range chapters {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", c.ChapterNumber, c.Name, c.NameTranslated, c.VersesCount)
	}
	return tw.Flush()
}

func printVerse(w io.Writer, chapter int, v *models.Verse, lang string) error {
	fmt.Fprintf(w, "Chapter %d, Verse %d\n\n", chapter, v.VerseNumber)
	fmt.Fprintf(w, "%s\n\n%s\n\n", v.Text, v.Transliteration)

	translations := v.TranslationsIn(lang)
	if len(translations) > 0 {
		fmt.Fprintln(w, "Translation & Meaning")
	}
	for _, t := range translations {
		fmt.Fprintf(w, "  %s\n  - %s\n\n", t.Description, t.AuthorName)
	}
	if v.WordMeanings != "" {
		fmt.Fprintf(w, "Word Meanings\n  %s\n", v.WordMeanings)
	}
	return nil
}
