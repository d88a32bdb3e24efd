package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"smart-extract/auth"
	"smart-extract/config"
	"smart-extract/utils"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "add":
		if len(os.Args) < 3 {
			fmt.Println("Usage: userctl add <username>")
			os.Exit(1)
		}
		addUser(os.Args[2])
	case "disable":
		if len(os.Args) < 3 {
			fmt.Println("Usage: userctl disable <username>")
			os.Exit(1)
		}
		disableUser(os.Args[2])
	case "list":
		listUsers()
	default:
		usage()
	}
}

func usage() {
	fmt.Println(`Usage: userctl [add|disable|list] <username>

add <username>       : Ajoute un utilisateur interactif (mot de passe demandé)
disable <username>   : Commente un utilisateur (soft, dans users.yaml)
list                 : Liste tous les utilisateurs`)
}

func loadConfigOrDie() *config.Config {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		fmt.Println("Erreur lecture config.yaml :", err)
		os.Exit(1)
	}
	return cfg
}

func addUser(username string) {
	cfg := loadConfigOrDie()
	usersFile := cfg.Auth.UserFile
	users, err := auth.LoadUsers(usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			users = &auth.UsersFile{Users: make(map[string]auth.UserInfo)}
		} else {
			fmt.Println("Erreur lecture users.yaml :", err)
			os.Exit(1)
		}
	}
	if _, exists := users.Users[username]; exists {
		fmt.Println("L'utilisateur existe déjà.")
		os.Exit(1)
	}
	pass, err := utils.PromptPasswordTwice()
	if err != nil {
		fmt.Println("Erreur :", err)
		os.Exit(1)
	}
	salt := utils.RandomHex(8)
	hash, err := auth.ApplyHashMacro(cfg.Auth.HashMacro, strings.TrimSpace(pass), username, salt, cfg.Auth.Salt)
	if err != nil {
		fmt.Println("Erreur hashage :", err)
		os.Exit(1)
	}
	fmt.Print("Est-ce un administrateur ? (y/N) : ")
	admin := false
	var rep string
	fmt.Scanln(&rep)
	if rep == "y" || rep == "Y" || rep == "oui" || rep == "O" {
		admin = true
	}
	users.Users[username] = auth.UserInfo{Hash: hash, Salt: salt, Admin: admin}
	saveUsers(usersFile, users)
	fmt.Println("Utilisateur ajouté.")
}

func disableUser(username string) {
	cfg := loadConfigOrDie()
	usersFile := cfg.Auth.UserFile

	// Édition texte plutôt que re-marshal : préserve les commentaires du yaml
	lines, err := utils.ReadLines(filepath.Join(utils.GetProjectRoot(), usersFile))
	if err != nil {
		fmt.Println("Erreur lecture users.yaml :", err)
		os.Exit(1)
	}
	out := []string{}
	inUser := false
	for _, l := range lines {
		trim := strings.TrimSpace(l)
		if strings.HasPrefix(trim, username+":") && !strings.HasPrefix(trim, "#") {
			inUser = true
			out = append(out, "# "+l)
			continue
		}
		if inUser {
			if strings.HasPrefix(trim, "#") || trim == "" {
				inUser = false
				out = append(out, l)
			} else if strings.HasSuffix(trim, ":") && !strings.Contains(trim, " ") {
				// nouvelle entrée utilisateur
				inUser = false
				out = append(out, l)
			} else {
				out = append(out, "# "+l)
			}
			continue
		}
		out = append(out, l)
	}

	if !strings.Contains(strings.Join(out, "\n"), "# "+username+":") {
		fmt.Println("Utilisateur non trouvé ou déjà commenté.")
		return
	}
	err = os.WriteFile(filepath.Join(utils.GetProjectRoot(), usersFile), []byte(strings.Join(out, "\n")+"\n"), 0644)
	if err != nil {
		fmt.Println("Erreur écriture :", err)
		os.Exit(1)
	}
	fmt.Println("Utilisateur désactivé dans le YAML.")
}

func listUsers() {
	cfg := loadConfigOrDie()
	users, err := auth.LoadUsers(cfg.Auth.UserFile)
	if err != nil {
		fmt.Println("Erreur lecture users.yaml :", err)
		os.Exit(1)
	}
	fmt.Println("Utilisateurs enregistrés :")
	for u, info := range users.Users {
		role := "user"
		if info.Admin {
			role = "admin"
		}
		fmt.Printf("- %s [%s]\n", u, role)
	}
}

func saveUsers(usersFile string, users *auth.UsersFile) {
	out, err := yaml.Marshal(users)
	if err != nil {
		fmt.Println("Erreur yaml :", err)
		os.Exit(1)
	}
	err = os.WriteFile(filepath.Join(utils.GetProjectRoot(), usersFile), out, 0644)
	if err != nil {
		fmt.Println("Erreur écriture :", err)
		os.Exit(1)
	}
}
