package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func keyed(key, comment string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: key, HeadComment: comment}
}

// Template renders a commented starter configuration with every supported
// key and its default.
func Template() ([]byte, error) {
	defaults := Default()

	logNode := &yaml.Node{Kind: yaml.MappingNode}
	logNode.Content = append(logNode.Content,
		keyed("level", "Console log level: debug, info, warn or error."),
		scalar(defaults.Log.Level),
		keyed("file", "Optional JSON log file (rotated). Empty disables file logging."),
		scalar(defaults.Log.File),
	)

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		keyed("bot_token", "Telegram bot token, from @BotFather."),
		scalar(""),
		keyed("chat_id", "Destination chat. For private chats this is the numeric user ID."),
		scalar(""),
		keyed("distro", "Distribution family. Leave empty to detect from /etc/os-release."),
		scalar(""),
		keyed("always_notify", "Send a report even when the system is up to date."),
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"},
		keyed("ip_endpoint", "HTTP endpoint answering with the caller's public IP."),
		scalar(defaults.IPEndpoint),
		keyed("log", ""),
		logNode,
	)

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	return yaml.Marshal(doc)
}

// WriteTemplate writes the starter configuration to path, refusing to
// overwrite an existing file unless force is set. The file carries the bot
// token, so it is created owner-only.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := Template()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0600)
}
