package app

import (
    "bufio"
    "errors"
    "fmt"
    "os"
    "strings"
)

// LoadEnvFiles loads dotenv files of KEY=VALUE pairs into the process
// environment. Variables already set to a non-empty value in the process
// win over every file; among files, later ones override earlier ones.
// Missing files are skipped. Values are not expanded.
func LoadEnvFiles(paths ...string) error {
    preset := make(map[string]bool)
    for _, kv := range os.Environ() {
        if k, v, ok := strings.Cut(kv, "="); ok && v != "" {
            preset[k] = true
        }
    }
    for _, p := range paths {
        p = strings.TrimSpace(p)
        if p == "" {
            continue
        }
        pairs, err := readEnvFile(p)
        if errors.Is(err, os.ErrNotExist) {
            continue
        }
        if err != nil {
            return fmt.Errorf("%s: %w", p, err)
        }
        for _, kv := range pairs {
            if preset[kv[0]] {
                continue
            }
            _ = os.Setenv(kv[0], kv[1])
        }
    }
    return nil
}

// readEnvFile parses one dotenv file. Blank lines, '#' comments, an optional
// "export " prefix and quoted values are handled; malformed lines are skipped.
func readEnvFile(path string) ([][2]string, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()

    var out [][2]string
    scanner := bufio.NewScanner(f)
    for scanner.Scan() {
        line := strings.TrimSpace(scanner.Text())
        if line == "" || strings.HasPrefix(line, "#") {
            continue
        }
        line = strings.TrimPrefix(line, "export ")
        key, val, ok := strings.Cut(line, "=")
        key = strings.TrimSpace(key)
        if !ok || key == "" {
            continue
        }
        out = append(out, [2]string{key, envValue(strings.TrimSpace(val))})
    }
    return out, scanner.Err()
}

// envValue strips matching quotes, or a trailing " #" comment from an
// unquoted value.
func envValue(v string) string {
    if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
        return v[1 : len(v)-1]
    }
    if i := strings.Index(v, " #"); i >= 0 {
        v = strings.TrimSpace(v[:i])
    }
    return v
}
