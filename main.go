package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blogd/config"
	"blogd/database"
	"blogd/database/model"
	"blogd/logger"
	"blogd/util/crypto"
	"blogd/web"
	"blogd/web/policy"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			_ = server.Stop()
			_ = database.CloseDB()
			return
		}
	}
}

// resetAdminPassword sets a new password on an admin account from the CLI,
// for operators locked out of the API.
func resetAdminPassword(username, password string) {
	if username == "" || password == "" {
		fmt.Println("username and password required")
		return
	}
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	db := database.GetDB()
	var u model.User
	if err := db.Where("username = ? AND role = ?", username, string(policy.RoleAdmin)).First(&u).Error; err != nil {
		fmt.Println("admin account not found:", err)
		return
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		fmt.Println(err)
		return
	}
	u.PasswordHash = hash
	if err := db.Save(&u).Error; err != nil {
		fmt.Println("reset password failed:", err)
		return
	}
	fmt.Println("reset password success")
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "blogd",
		Short: "blog content API server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var username string
	var password string
	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Maintenance commands",
	}
	resetCmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset an admin account's password",
		Run: func(cmd *cobra.Command, args []string) {
			resetAdminPassword(username, password)
		},
	}
	resetCmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	resetCmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	settingCmd.AddCommand(resetCmd)

	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
