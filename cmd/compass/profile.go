// Profile commands manage the child profile singleton.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compasscare/compass/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the child profile",
}

var (
	profileName          string
	profileDiagnoses     []string
	profileCommunication string
	profileSensitivities []string
	profileSeeking       []string
	profileStrategies    []string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the child profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileSet,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the child profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "child's name (required)")
	profileSetCmd.Flags().StringSliceVar(&profileDiagnoses, "diagnosis", nil, "diagnosis (repeatable)")
	profileSetCmd.Flags().StringVar(&profileCommunication, "communication", "", "communication style")
	profileSetCmd.Flags().StringSliceVar(&profileSensitivities, "sensitivity", nil, "sensory sensitivity (repeatable)")
	profileSetCmd.Flags().StringSliceVar(&profileSeeking, "seeking", nil, "sought sensory input (repeatable)")
	profileSetCmd.Flags().StringSliceVar(&profileStrategies, "strategy", nil, "effective strategy (repeatable)")
	_ = profileSetCmd.MarkFlagRequired("name")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	profile, err := s.store.SaveProfile(types.ProfileInput{
		Name:                 profileName,
		Diagnoses:            profileDiagnoses,
		CommunicationStyle:   profileCommunication,
		SensorySensitivities: profileSensitivities,
		SeekingSensory:       profileSeeking,
		EffectiveStrategies:  profileStrategies,
	})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	if flagJSON {
		return printJSON(profile)
	}
	fmt.Printf("Saved profile for %s\n", profile.Name)
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	profile, ok := s.store.Profile()
	if !ok {
		return fmt.Errorf("no profile: %w", types.ErrNotFound)
	}

	if flagJSON {
		return printJSON(profile)
	}
	fmt.Println("Name:         ", profile.Name)
	fmt.Println("Diagnoses:    ", strings.Join(profile.Diagnoses, ", "))
	fmt.Println("Communication:", profile.CommunicationStyle)
	fmt.Println("Sensitivities:", strings.Join(profile.SensorySensitivities, ", "))
	fmt.Println("Strategies:   ", strings.Join(profile.EffectiveStrategies, ", "))
	return nil
}
