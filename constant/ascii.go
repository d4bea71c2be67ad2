package constant

// AsciiArtLogo is the application's banner shown in the root help text.
const AsciiArtLogo = `
               _  __               _
  _ __ ___ ___| |/ _| ___  ___  __| |
 | '__/ _ \ _ \ | |_ / _ \/ _ \/ _' |
 | | |  __/  __/ |  _|  __/  __/ (_| |
 |_|  \___|\___|_|_|  \___|\___|\__,_|`
