package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	apiBaseURL  string
	accessToken string
)

type ResponseError struct {
	Detail string `json:"detail"`
}

var apiServiceBase = func() *resty.Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Accept", "application/json").
		SetError(&ResponseError{}).
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				return fmt.Errorf("%s", resp.Error().(*ResponseError).Detail)
			}

			return nil
		})

	if accessToken != "" {
		client.SetAuthToken(accessToken)
	}

	return client
}

var rootCmd = &cobra.Command{
	Use:   "staffdir",
	Short: "Employee directory CLI",
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and print an access token",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var token struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}

		_, err := apiServiceBase().R().
			SetFormData(map[string]string{
				"username": args[0],
				"password": args[1],
			}).
			SetResult(&token).
			Post("/auth/token")
		if err != nil {
			fmt.Println("Error signing in:", err)
			os.Exit(1)
		}

		fmt.Println(token.AccessToken)
	},
}

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage employees",
}

var employeeCreateCmd = &cobra.Command{
	Use:   "create <employee_id> <name> <email>",
	Short: "Create a new employee",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		role, _ := cmd.Flags().GetString("role")

		var created struct {
			EmployeeID string `json:"employee_id"`
			Email      string `json:"email"`
			Role       string `json:"role"`
		}

		_, err := apiServiceBase().R().
			SetBody(map[string]string{
				"employee_id": args[0],
				"name":        args[1],
				"email":       args[2],
				"role":        role,
			}).
			SetResult(&created).
			Post("/admin/employees")
		if err != nil {
			fmt.Println("Error creating employee:", err)
			os.Exit(1)
		}

		fmt.Printf("Created employee %s (%s) with role %s\n", created.EmployeeID, created.Email, created.Role)
		fmt.Println("A welcome mail with the temporary password has been sent")
	},
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all employees",
	Run: func(cmd *cobra.Command, args []string) {
		var employees []struct {
			EmployeeID string  `json:"employee_id"`
			Name       string  `json:"name"`
			Email      string  `json:"email"`
			Department *string `json:"department"`
			Role       string  `json:"role"`
		}

		_, err := apiServiceBase().R().
			SetResult(&employees).
			Get("/employees")
		if err != nil {
			fmt.Println("Error listing employees:", err)
			os.Exit(1)
		}

		for _, e := range employees {
			department := "-"
			if e.Department != nil {
				department = *e.Department
			}
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n", e.EmployeeID, e.Name, e.Email, department, e.Role)
		}
	},
}

var employeeDeleteCmd = &cobra.Command{
	Use:   "delete <employee_id>",
	Short: "Delete an employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, err := apiServiceBase().R().
			Delete(fmt.Sprintf("/admin/employees/%s", args[0]))
		if err != nil {
			fmt.Println("Error deleting employee:", err)
			os.Exit(1)
		}

		fmt.Println("Employee deleted")
	},
}

var employeeResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <employee_id>",
	Short: "Issue a temporary password for an employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, err := apiServiceBase().R().
			Post(fmt.Sprintf("/admin/employees/%s/reset-password", args[0]))
		if err != nil {
			fmt.Println("Error resetting password:", err)
			os.Exit(1)
		}

		fmt.Println("Temporary password issued and mailed")
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "http://localhost:3000/api", "API base URL")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", "", "Bearer access token")

	employeeCreateCmd.Flags().String("role", "employee", "Role for the new employee (admin or employee)")

	employeeCmd.AddCommand(employeeCreateCmd)
	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeDeleteCmd)
	employeeCmd.AddCommand(employeeResetPasswordCmd)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(employeeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
