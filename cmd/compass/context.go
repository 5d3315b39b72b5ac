// Context and onboarding commands for the compass CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context [home|school]",
	Short: "Show or set the current context",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		if len(args) == 0 {
			fmt.Println(s.store.CurrentContext())
			return nil
		}

		if err := s.store.SetCurrentContext(args[0]); err != nil {
			return fmt.Errorf("set context: %w", err)
		}
		fmt.Println("Context set to", args[0])
		return nil
	},
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Mark onboarding as complete",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		if s.store.HasCompletedOnboarding() {
			fmt.Println("Onboarding already complete")
			return nil
		}
		s.store.CompleteOnboarding()
		fmt.Println("Onboarding complete")
		return nil
	},
}
