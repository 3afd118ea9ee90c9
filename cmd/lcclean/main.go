package main

import (
	"os"

	"github.com/sepal-contrib/lcclean"
	"github.com/sepal-contrib/lcclean/log"
	"github.com/sepal-contrib/lcclean/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath string
	skipFnf bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lcclean",
	Short: "Clean up the CAFI regional land-cover classification",
	Long: `lcclean reclassifies the CAFI regional land-cover raster to the DDD
class schema, corrects it with auxiliary datasets (elevation, built-up,
tree cover, water history, mangroves, national land cover) and exports the
cleaned classification plus a forest/non-forest mask.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cleanup pipeline and export the products",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	log.Init(verbose)
	defer log.Sync()

	cfg, err := lcclean.LoadRunConfig(cfgPath)
	if err != nil {
		log.Error("load run config failed", zap.String("config", cfgPath), zap.Error(err))
		return err
	}
	if err = os.MkdirAll(cfg.Output.Dir, os.ModePerm); err != nil {
		return err
	}
	scratch := ""
	if cfg.TmpDir != "" {
		if scratch, err = utils.GetUniqSubDir(cfg.TmpDir); err != nil {
			log.Error("create scratch dir failed", zap.String("tmp_dir", cfg.TmpDir), zap.Error(err))
			return err
		}
		defer os.RemoveAll(scratch)
	}
	tb := lcclean.NewGdalToolbox(scratch)
	in, err := tb.LoadInputs(cfg)
	if err != nil {
		log.Error("load inputs failed", zap.Error(err))
		return err
	}
	class, fnf := lcclean.NewPipeline(in, cfg.Rules).Run()
	logClassBreakdown(class)

	if _, err = tb.ExportProduct(class, cfg.Output.Dir, cfg.Output.ClassPrefix); err != nil {
		return err
	}
	if !skipFnf {
		if _, err = tb.ExportProduct(fnf, cfg.Output.Dir, cfg.Output.FnfPrefix); err != nil {
			return err
		}
	}
	return nil
}

func logClassBreakdown(class *lcclean.Grid) {
	counts := class.Histogram()
	for code := lcclean.ClassDenseForest; code <= lcclean.ClassShrubSavannaNF; code++ {
		if n := counts[code]; n > 0 {
			log.Info("class area",
				zap.Int("code", code),
				zap.String("class", lcclean.ClassNames[code]),
				zap.Int("pixels", n))
		}
	}
}

func init() {
	runCmd.Flags().StringVarP(&cfgPath, "config", "c", "lcclean.yaml", "run configuration file")
	runCmd.Flags().BoolVar(&skipFnf, "skip-fnf", false, "export only the cleaned classification")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
