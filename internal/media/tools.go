package media

import (
	"fmt"
	"os"
	"os/exec"
)

const (
	EnvFFmpegPath  = "DIARSRT_FFMPEG_PATH"
	EnvFFprobePath = "DIARSRT_FFPROBE_PATH"
)

// resolves ffmpeg from an explicit path, DIARSRT_FFMPEG_PATH or PATH
func FFmpegPath(explicit string) (string, error) {
	return findTool("ffmpeg", explicit, EnvFFmpegPath)
}

// resolves ffprobe from an explicit path, DIARSRT_FFPROBE_PATH or PATH
func FFprobePath(explicit string) (string, error) {
	return findTool("ffprobe", explicit, EnvFFprobePath)
}

func findTool(name, explicit, envVar string) (string, error) {
	for _, candidate := range []string{explicit, os.Getenv(envVar)} {
		if candidate == "" {
			continue
		}
		if !fileExists(candidate) {
			return "", &ToolError{
				Tool: name,
				Path: candidate,
				Err:  fmt.Errorf("%w at %s", ErrToolNotFound, candidate),
			}
		}
		return candidate, nil
	}

	found, err := exec.LookPath(name)
	if err != nil {
		return "", &ToolError{Tool: name, Err: ErrToolNotFound}
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
